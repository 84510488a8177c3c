package onboarding

import "fastkyc/internal/verification/emailcheck"

// User-facing copy, kept in one place so the controller stays readable.
const (
	promptStart = "Hi! I'll be your onboarding buddy for today. Please upload your ID document to start."

	promptDocumentReceived = "ID document received! Please provide your email."
	promptDocumentRetry    = "Please send a photo of your ID document."
	promptUploadFailed     = "We couldn't save your document. Please send the photo again."

	promptEmailText     = "Please send your email address as a text message."
	promptEmailRetry    = "There was an error validating your email. Please try again."
	promptSSN           = "Got it. Next, please provide your SSN. We'll encrypt it for security."
	promptSSNRetry      = "Please provide a valid SSN."
	promptCancelled     = "Conversation cancelled."
	promptNoSession     = "Send /start to begin your onboarding."
	summaryPrefix       = "Thank you! We've hidden it for your privacy. Here is the information you provided:\n"
)

// emailRejectCopy maps each deliverability failure to its own message; all of
// them return the conversation to the email step.
var emailRejectCopy = map[emailcheck.RejectReason]string{
	emailcheck.ReasonBadFormat:     "Oops! That doesn't look like an email address. Please provide a valid email address.",
	emailcheck.ReasonNoMX:          "We couldn't find a mail server for that address. Please provide a valid email address.",
	emailcheck.ReasonSMTPInvalid:   "Oops! Looks like this email is invalid. Please provide a valid email address.",
	emailcheck.ReasonUndeliverable: "We see that the email address is undeliverable. Please provide a valid email address to ensure you can receive our communications!",
	emailcheck.ReasonDisposable:    "Sorry, disposable email addresses are not allowed. Please provide a valid email address.",
}
