package booking

import (
	"fmt"

	"github.com/IITBsports/turf-backend/mailer"
	"github.com/IITBsports/turf-backend/model"
	"github.com/IITBsports/turf-backend/util/civil"
)

const signature = `Warm regards,
Yash Shah
Institute Sports Football Secretary, 2025-26
Ph: +91 9022513006`

func ackEmail(from string, r *model.BookingRequest) mailer.Message {
	body := fmt.Sprintf(`Greetings,

This email acknowledges your request to book the Gymkhana Football Turf. Please find the details of your request below:

Name: %s
Requested Time: %s
Requested Date: %s
Request submitted at: %s

Please note that this is just an acknowledgment of your booking request. You will receive a final email confirming your booking if it is approved by the Institute Football Secretary.

Requests are processed on a first-come-first-served basis based on submission time.

We kindly request you to await the confirmation email before making any plans regarding the turf usage.

If you have any questions or need further assistance, feel free to reach out.

%s`, r.Name, model.SlotTime(r.Slot), r.Date, civil.Stamp(r.CreatedAt), signature)

	return mailer.Message{
		From:    from,
		To:      r.Email,
		Subject: "Turf Booking Request Received",
		Body:    body,
	}
}

func confirmationEmail(from string, r *model.BookingRequest) mailer.Message {
	body := fmt.Sprintf(`Greetings,

This email is to confirm your booking of the Gymkhana Football Turf. Please find the booking details below:

Name: %s
Time: %s
Date: %s
Original Request Time: %s

We kindly request you to make the most of this facility while adhering to the rules and regulations that help us maintain it for everyone's enjoyment.

If you have any questions or need further assistance, feel free to reach out.

%s`, r.Name, model.SlotTime(r.Slot), r.Date, civil.Stamp(r.CreatedAt), signature)

	return mailer.Message{
		From:    from,
		To:      r.Email,
		Subject: "Turf Booking Confirmation",
		Body:    body,
	}
}

func declineEmail(from string, r *model.BookingRequest) mailer.Message {
	body := fmt.Sprintf(`Greetings,

We regret to inform you that your booking request for the Gymkhana Football Turf has been declined. We apologize for any inconvenience this may cause.

If you have any questions or need further clarification, feel free to reach out.

%s`, signature)

	return mailer.Message{
		From:    from,
		To:      r.Email,
		Subject: "Booking Declined",
		Body:    body,
	}
}

func autoDeclineEmail(from string, loser, winner *model.BookingRequest) mailer.Message {
	body := fmt.Sprintf(`Greetings,

We regret to inform you that your booking request for the Gymkhana Football Turf has been declined as the slot has been allocated to an earlier request.

Slot: %d
Date: %s

We process requests on a first-come-first-served basis. Please try booking another available slot.

If you have any questions or need further clarification, feel free to reach out.

%s`, winner.Slot, winner.Date, signature)

	return mailer.Message{
		From:    from,
		To:      loser.Email,
		Subject: "Booking Declined - Slot Already Booked",
		Body:    body,
	}
}
