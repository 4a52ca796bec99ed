package notify

import (
	"fmt"
	"strings"

	"github.com/medibook/booking-api/internal/slots"
)

// ConfirmationEmail builds the booking confirmation mail from the slot's
// denormalized details.
func ConfirmationEmail(to string, detail *slots.SlotDetail) EmailMessage {
	date := "Unknown date"
	hour := "Unknown time"
	if !detail.DateStart.IsZero() {
		date = detail.DateStart.Format("02/01/2006")
		hour = detail.DateStart.Format("15:04")
	}

	address := detail.Address
	if detail.City != "" {
		address += ", " + detail.City
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">`)
	b.WriteString(`<h2>Booking Confirmed</h2>`)
	b.WriteString(`<p>Dear User,</p><p>We are pleased to confirm your appointment:</p>`)
	b.WriteString(`<div style="background-color: #f9f9f9; border-left: 4px solid #1976D2; padding: 15px;">`)
	fmt.Fprintf(&b, `<p><strong>Date:</strong> %s</p>`, date)
	fmt.Fprintf(&b, `<p><strong>Time:</strong> %s</p>`, hour)
	fmt.Fprintf(&b, `<p><strong>Doctor:</strong> %s</p>`, detail.Doctor)
	fmt.Fprintf(&b, `<p><strong>Clinic:</strong> %s</p>`, detail.Clinic)
	fmt.Fprintf(&b, `<p><strong>Address:</strong> %s</p>`, address)
	b.WriteString(`</div><p>Please arrive 10 minutes early.</p>`)
	b.WriteString(`<p>Best regards,<br>The Booking Team</p></div>`)

	text := fmt.Sprintf(
		"Your appointment is confirmed.\nDate: %s\nTime: %s\nDoctor: %s\nClinic: %s\nAddress: %s\nPlease arrive 10 minutes early.",
		date, hour, detail.Doctor, detail.Clinic, address)

	return EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("Appointment Confirmation: %s", date),
		Body:    text,
		HTML:    b.String(),
	}
}

// OTPEmail builds the one-time-code mail.
func OTPEmail(to, code string) EmailMessage {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #eee; border-radius: 5px;">
<h2 style="color: #333;">Confirm Your Booking</h2>
<p>Use the following code to complete the process:</p>
<h1 style="color: #d32f2f; font-size: 32px; letter-spacing: 2px;">%s</h1>
<p style="color: #777; font-size: 12px;">If you did not request this code, please ignore this email.</p>
</div>`, code)

	return EmailMessage{
		To:      to,
		Subject: "OTP Code for Your Booking",
		Body:    fmt.Sprintf("Your OTP code is: %s", code),
		HTML:    html,
	}
}
