// mail/templates.go
package mail

import (
	"fmt"

	"github.com/gosimple/slug"
)

const (
	TicketSubject = "Your Registration Confirmation 🎉"
	RSVPSubject   = "Please Confirm Your Attendance"
)

// Per-city intro copy for the ticket email, keyed by slugified city name.
// Cities without an entry get the default copy.
var ticketIntroByCity = map[string]string{
	"vijayawada": `Your registration has been successfully completed. Your entry pass for the Vijayawada show is attached below.`,
	"bengaluru":  `Your registration has been successfully completed. Doors open one hour before showtime — carry this ticket on your phone.`,
}

const defaultTicketIntro = `Your registration has been successfully completed.<br><br>
In the meantime, keep an eye on your inbox and WhatsApp for further updates on your admission status and event details.<br><br>
We’ll be sharing an RSVP email prior the event to confirm your attendance.`

// TicketEmailBody builds the confirmation email with the embedded ticket
// image, choosing the copy variant for the registrant's city.
func TicketEmailBody(name, city, imageURL, teamName string) string {
	intro, ok := ticketIntroByCity[slug.Make(city)]
	if !ok {
		intro = defaultTicketIntro
	}

	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; padding: 20px; text-align: left; color: #333;">
          <h1 style="color: #000;">Hi %s,</h1>
          <p style="font-size: 16px; line-height: 1.5;">
            %s
          </p>
          <div style="margin: 20px 0;">
            <img
              src="%s"
              alt="Your Event Ticket"
              style="max-width: 100%%; height: auto; border-radius: 8px;"
            />
          </div>
          <p style="font-size: 16px; margin-top: 20px;">
            Warm regards,<br/>
            <strong>%s</strong>
          </p>
        </div>
      `, name, intro, imageURL, teamName)
}

// RSVPEmailBody builds the yes/no confirmation request with event details
// from the city configuration.
func RSVPEmailBody(name, eventName, eventDate, venue, yesURL, noURL, teamName string) string {
	if venue == "" {
		venue = "TBA"
	}

	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px; margin: 0 auto; color: #333;">

          <p style="font-size: 16px; line-height: 1.6;">
            Hi <strong>%s</strong>,
          </p>

          <p style="font-size: 16px; line-height: 1.6;">
            We're excited to have you join us for <strong>%s</strong> on
            <strong>%s</strong> at <strong>%s</strong>.
          </p>

          <p style="font-size: 16px; line-height: 1.6;">
            Kindly confirm your attendance by clicking one of the buttons below:
          </p>

          <div style="text-align: left; margin: 30px 0;">
            <a href="%s"
               style="display: inline-block; background-color: #28a745; color: white; padding: 15px 50px;
                      text-decoration: none; font-size: 16px; font-weight: bold;
                      margin: 10px;">
              YES
            </a>

            <a href="%s"
               style="display: inline-block; background-color: #dc3545; color: white; padding: 15px 40px;
                      text-decoration: none; font-size: 16px; font-weight: bold;
                      margin: 10px;">
              NO
            </a>
          </div>

          <p style="font-size: 14px; line-height: 1.6; color: #666; margin-top: 30px;">
            We look forward to seeing you at the event!
          </p>

          <p style="font-size: 14px; margin-top: 20px;">
            Warm regards,<br/>
            <strong>%s</strong>
          </p>
        </div>
      `, name, eventName, eventDate, venue, yesURL, noURL, teamName)
}
