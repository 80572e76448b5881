package telegram

// Replies sent back to users. The date placeholders are filled with
// domain.DateFormat.
const (
	invalidDateText  = "Sorry, I do not understand your message. Please try again with something like: %s 22.04.1997"
	storageErrorText = "I was unable to safe your response. Please ask my boss..."

	yesConfirmText = "%s: ✔"
	noConfirmText  = "%s: ❌"
	withdrawalText = "%s will not attend the meeting at %s 😢"

	nobodyText        = "Nobody said anything... 🤨"
	summaryHeaderText = "Meeting on %s:"

	askQuestionText     = "Hey %s, %s asks if you are available on %s. Please reply with /yes or /no 🙃"
	askConfirmationText = "I asked\n%s\n for their availability on %s. ☺"

	welcomeText      = "Hey %s! Nice to see you. 😘"
	knownAlreadyText = "We already talked, right?! 🤔"
	registerFailText = "I was unable to add you to the club. Please talk to my boss."
)

// Status glyphs used by /summary.
const (
	glyphAttending = "✔"
	glyphDeclined  = "❌"
	glyphUnknown   = "❓"
)
