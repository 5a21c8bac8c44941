// Package help holds the static help-center content: step-by-step
// tutorials and frequently asked questions.
package help

type Step struct {
	Title       string
	Description string
}

type Tutorial struct {
	ID    string
	Title string
	Steps []Step
}

type FAQ struct {
	Question string
	Answer   string
}

var Tutorials = []Tutorial{
	{
		ID:    "signup",
		Title: "How to Sign Up",
		Steps: []Step{
			{"Go to the Sign Up Page", "Click the Sign Up button in the top right corner of any page."},
			{"Enter Your Details", "Fill in your full name, email address and a password of at least 8 characters."},
			{"Agree to Terms", "Read the terms of service and privacy policy, then tick the box to agree."},
			{"Create Your Account", "Press Create Account to finish registration."},
			{"Verify Your Email", "Open the confirmation email we send you and follow the link to activate your account."},
		},
	},
	{
		ID:    "signin",
		Title: "How to Sign In",
		Steps: []Step{
			{"Open Sign In Page", "Click Sign In in the top right corner of the page."},
			{"Enter Your Credentials", "Type the email address and password you registered with."},
			{"Stay Signed In", "Tick Remember me if you are on a personal device."},
			{"Sign In", "Press Sign In to go straight to your library."},
		},
	},
	{
		ID:    "subscribe",
		Title: "How to Subscribe & Pay",
		Steps: []Step{
			{"Choose Your Plan", "Pick a plan from daily passes up to a full year. Longer plans cost less per day."},
			{"Select Payment Method", "Choose Mobile Money, card, Pesapal, PayPal or bank transfer."},
			{"Enter Payment Details", "Provide the phone number, card details or email address your payment method needs."},
			{"Complete Payment", "Confirm the payment. Mobile Money users approve the prompt on their phone."},
			{"Start Watching", "Your plan activates as soon as payment is confirmed and the whole library is unlocked."},
		},
	},
}

var FAQs = []FAQ{
	{"Can I use Acholiflixx on multiple devices?", "Yes. Sign in with the same account on your phone, tablet, computer or smart TV. Streams on several devices at once depend on your plan."},
	{"What happens when my subscription expires?", "You keep your account and watch history, but playback stops until you renew with any plan."},
	{"How do I pay with Mobile Money?", "Choose Mobile Money at checkout, enter your MTN or Airtel number and approve the payment prompt that appears on your phone."},
	{"Can I get a refund?", "Subscriptions are generally non-refundable. If you were charged in error, contact support@acholiflixx.com within 7 days."},
	{"How do I become an agent?", "Open the Become an Agent page, fill in the application and our team will contact you within 24-48 hours."},
	{"Is my payment information secure?", "Payments are handled by licensed payment partners over encrypted connections. We never store your full card details."},
	{"What content is available?", "Films, documentaries, music performances and cultural programmes from Acholi and across Uganda, with new titles added every week."},
	{"Can I download videos for offline viewing?", "Offline downloads are coming soon to the mobile app for subscribers on weekly plans and above."},
}

// Find returns the tutorial with the given id.
func Find(id string) (Tutorial, bool) {
	for _, t := range Tutorials {
		if t.ID == id {
			return t, true
		}
	}
	return Tutorial{}, false
}

// Toggle returns the tutorial id to expand after the user clicks id while
// open is expanded. Only one tutorial is expanded at a time.
func Toggle(open, id string) string {
	if open == id {
		return ""
	}
	if _, ok := Find(id); !ok {
		return ""
	}
	return id
}
