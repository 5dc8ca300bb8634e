package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"crvparking/internal/db"
	"crvparking/internal/entities"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyService sends fire-and-forget notifications. Every send runs in a
// goroutine and only logs on failure; the till never waits on a provider.
// Providers are configured through environment variables and silently skipped
// when unconfigured.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

// ShiftClosed emails the shift summary to PARKING_REPORT_EMAIL.
func (s *NotifyService) ShiftClosed(report *entities.ShiftReport) {
	toEmail := os.Getenv("PARKING_REPORT_EMAIL")
	if toEmail == "" {
		return
	}

	subject := fmt.Sprintf("Cash shift #%d closed - total %s", report.Shift.ID, report.Total.StringFixed(2))
	var body strings.Builder
	fmt.Fprintf(&body, "Cash shift #%d\nOpened: %s\nInitial float: %s\nPayments: %d\nTotal collected: %s\n\n",
		report.Shift.ID,
		report.Shift.OpenedAt.Format("02 Jan 2006 15:04 MST"),
		report.Shift.InitialAmount.StringFixed(2),
		len(report.Rows),
		report.Total.StringFixed(2),
	)
	for _, row := range report.Rows {
		fmt.Fprintf(&body, "%s  %-5s %8s  %s  %s\n",
			row.PaidAt.Format("15:04"), row.Method, row.Amount.StringFixed(2), row.Plate, row.RuleDesc)
	}

	go func() {
		if err := sendEmailWithSendGrid(toEmail, "Parking reports", subject, body.String()); err != nil {
			log.Printf("ALERT (async): failed to send shift report for shift %d: %v", report.Shift.ID, err)
		}
	}()
}

// ExitReceipt texts the client a receipt for the vehicle's stay, when the
// client has a phone on file.
func (s *NotifyService) ExitReceipt(client db.Client, plate string, fee FeeResult) {
	if client.Phone == "" {
		return
	}

	message := fmt.Sprintf("CRV Parking: vehicle %s checked out. %d min, total %s (%s). Thank you%s!",
		plate, fee.Minutes, fee.Amount.StringFixed(2), fee.Description, vipSuffix(client))

	go func() {
		if err := sendSMS(client.Phone, message); err != nil {
			log.Printf("ALERT (async): failed to send exit receipt for plate %s: %v", plate, err)
		}
	}()
}

func vipSuffix(client db.Client) string {
	if client.IsVip {
		return " for your preference"
	}
	return ""
}

func sendEmailWithSendGrid(toEmail, toName, subject, plainTextContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY is not set. Email will not be sent.")
		return fmt.Errorf("SENDGRID_API_KEY is not set")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("WARNING: SENDGRID_FROM_EMAIL is not set. Email will not be sent.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not set")
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "CRV Parking"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, plainTextContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email through SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned non-success status %d: %s", response.StatusCode, response.Body)
	}
	log.Printf("Email sent to %s (subject: %s). Status: %d", toEmail, subject, response.StatusCode)
	return nil
}

func sendSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("WARNING: Twilio credentials (SID, token or from number) are not fully configured. SMS will not be sent.")
		return fmt.Errorf("twilio credentials not fully configured")
	}

	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARNING: destination number %q is not in E.164 format (must start with '+'). SMS may fail.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to %s. Message SID: %s", toNumber, *resp.Sid)
	}
	return nil
}
