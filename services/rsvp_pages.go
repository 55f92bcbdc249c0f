package services

import "fmt"

// Full HTML pages served behind the emailed RSVP links. Registrants reach
// these straight from their mail client, so each outcome gets a complete
// styled page rather than a JSON body.

const rsvpPlainPageStyle = `
      body {
        font-family: Arial, sans-serif;
        display: flex;
        justify-content: center;
        align-items: center;
        min-height: 100vh;
        margin: 0;
        background-color: #f5f5f5;
      }
      .container {
        text-align: center;
        padding: 40px;
        background: white;
        border-radius: 10px;
        box-shadow: 0 4px 6px rgba(0,0,0,0.1);
      }
      h1 { color: #dc3545; }`

func rsvpPlainPage(title, heading, message string) string {
	return fmt.Sprintf(`
    <html>
      <head>
        <title>%s</title>
        <style>%s</style>
      </head>
      <body>
        <div class="container">
          <h1>%s</h1>
          <p>%s</p>
        </div>
      </body>
    </html>
    `, title, rsvpPlainPageStyle, heading, message)
}

func rsvpInvalidRequestPage() string {
	return rsvpPlainPage("Invalid Request", "Invalid Request", "Missing required parameters.")
}

func rsvpInvalidResponsePage() string {
	return rsvpPlainPage("Invalid Response", "Invalid Response", `The response parameter must be either "yes" or "no".`)
}

func rsvpNotFoundPage() string {
	return rsvpPlainPage("Not Found", "Registration Not Found", "We couldn't find a registration matching this link.")
}

func rsvpErrorPage() string {
	return rsvpPlainPage("Error", "Error", "Failed to update your RSVP status. Please try again later.")
}

func rsvpConfirmedPage(eventName, teamName string) string {
	if eventName == "" {
		eventName = "the event"
	}
	if teamName == "" {
		teamName = "Event Team"
	}
	return fmt.Sprintf(`
    <html>
      <head>
        <title>RSVP Confirmed</title>
        <style>
          body {
            font-family: Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
            margin: 0;
          }
          .container {
            text-align: center;
            padding: 60px 40px;
            background: white;
            border-radius: 15px;
            box-shadow: 0 8px 16px rgba(0,0,0,0.2);
            max-width: 500px;
          }
          h1 {
            color: #28a745;
            font-size: 2.5em;
            margin-bottom: 20px;
          }
          p {
            color: #333;
            font-size: 1.2em;
            line-height: 1.6;
          }
          .logo {
            margin-top: 30px;
            font-weight: bold;
            color: #eb0a1e;
          }
        </style>
      </head>
      <body>
        <div class="container">
          <h1>Thank You!</h1>
          <p>Your attendance has been confirmed.</p>
          <p>We look forward to seeing you at <strong>%s</strong>!</p>
          <div class="logo">%s</div>
        </div>
      </body>
    </html>
    `, eventName, teamName)
}

func rsvpDeclinedPage(teamName string) string {
	if teamName == "" {
		teamName = "Event Team"
	}
	return fmt.Sprintf(`
    <html>
      <head>
        <title>RSVP Response Received</title>
        <style>
          body {
            font-family: Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #6c757d 0%%, #495057 100%%);
          }
          .container {
            text-align: center;
            padding: 60px 40px;
            background: white;
            border-radius: 15px;
            box-shadow: 0 8px 16px rgba(0,0,0,0.2);
            max-width: 500px;
          }
          h1 {
            color: #6c757d;
            font-size: 2.5em;
            margin-bottom: 20px;
          }
          .icon {
            font-size: 4em;
            color: #6c757d;
            margin-bottom: 20px;
          }
          p {
            color: #333;
            font-size: 1.2em;
            line-height: 1.6;
          }
          .logo {
            margin-top: 30px;
            font-weight: bold;
            color: #eb0a1e;
          }
        </style>
      </head>
      <body>
        <div class="container">
          <div class="icon">📋</div>
          <h1>We Understand</h1>
          <p>Thank you for letting us know you won't be able to attend.</p>
          <p>We hope to see you at future events!</p>
          <div class="logo">%s</div>
        </div>
      </body>
    </html>
    `, teamName)
}
