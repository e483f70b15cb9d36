package bookingflow

import "fmt"

const (
	msgStart          = "I'd be happy to help you book a veterinary appointment! Let's get started. Could you please tell me your name (the pet owner's name)?"
	msgOwnerNameEmpty = "I didn't catch that. Could you please tell me your name (the pet owner's name)?"
	msgPetNameEmpty   = "I didn't catch that. What's your pet's name?"
	msgInvalidPhone   = "That doesn't look like a valid phone number. Please enter a phone number with at least 10 digits."
	msgAskDateTime    = "When would you like to schedule the appointment? Please provide your preferred date and time (e.g., 'January 15, 2026 at 2:00 PM')."
	msgDateTimeEmpty  = "Please tell me your preferred date and time for the appointment (e.g., 'tomorrow at 3pm')."
	msgRestart        = "No problem! Let's start over. Could you please tell me your name?"
	msgConfirmAgain   = `Please reply with "yes" to confirm the appointment or "no" to start over.`
	msgAnythingElse   = "Is there anything else I can help you with?"
)

func msgAskPetName(ownerName string) string {
	return fmt.Sprintf("Thank you, %s! What's your pet's name?", ownerName)
}

func msgAskPhone(petName string) string {
	return fmt.Sprintf("Great! %s is a lovely name. Could you please provide your phone number so we can contact you about the appointment?", petName)
}

func msgConfirmDetails(c Collected) string {
	return "Perfect! Let me confirm your appointment details:\n\n" +
		fmt.Sprintf("👤 **Owner Name:** %s\n", c.OwnerName) +
		fmt.Sprintf("🐾 **Pet Name:** %s\n", c.PetName) +
		fmt.Sprintf("📞 **Phone:** %s\n", c.Phone) +
		fmt.Sprintf("📅 **Preferred Time:** %s\n\n", c.PreferredDateTime) +
		`Does everything look correct? Please reply with "yes" to confirm or "no" to start over.`
}

func msgBooked(c Collected) string {
	return "🎉 Your appointment has been booked successfully!\n\n" +
		fmt.Sprintf("We've scheduled a visit for **%s** on **%s**.\n\n", c.PetName, c.PreferredDateTime) +
		fmt.Sprintf("You'll receive a confirmation call at %s. Is there anything else I can help you with regarding your pet?", c.Phone)
}
