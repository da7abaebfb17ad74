package intake

import (
	"fmt"
	"strings"
)

// Canned prompt texts for the structured flow. Every function that takes a
// name degrades gracefully when the name is still unknown by omitting the
// personal clause.

const greetingPrompt = "Hello! I'm Kaleem, your resume building assistant. " +
	"To get started, please upload your current resume so I can analyze it and help you improve it."

func uploadReminder(name string) string {
	mention := ""
	if name != "" {
		mention = ", " + name
	}
	return fmt.Sprintf("I need your resume to proceed%s. "+
		"Please use the upload button to share your resume in PDF, DOCX, or TXT format.", mention)
}

func uploadAck(name string) string {
	if name == "" {
		return "Thanks for uploading your resume! "
	}
	return fmt.Sprintf("Thanks for uploading your resume, %s! ", name)
}

// contactInfoBody names the specific fields that could not be found in the
// uploaded resume.
func contactInfoBody(c ContactInfo) string {
	var missing []string
	if c.Email == "" {
		missing = append(missing, "email address")
	}
	if c.Phone == "" {
		missing = append(missing, "phone number")
	}
	return fmt.Sprintf("I couldn't find your %s in your resume. Your contact info is missing. "+
		"Please provide your email and phone number below:", strings.Join(missing, " and "))
}

const linkedInBody = "Could you please share your LinkedIn profile URL? " +
	"This will help me understand your professional network and presence."

func linkedInQuestion(name string) string {
	if name == "" {
		return "Thank you. " + linkedInBody
	}
	return fmt.Sprintf("Thank you, %s. %s", name, linkedInBody)
}

func goalsQuestion(name string) string {
	lead := "Now I'd like to understand your professional goals."
	if name != "" {
		lead = fmt.Sprintf("Now, %s, I'd like to understand your professional goals.", name)
	}
	return lead + " What are you aiming to achieve in your career over the next 1-3 years? " +
		"Which industries or roles are you targeting?"
}

func valuePropQuestion(name string) string {
	lead := "Thank you for sharing that."
	if name != "" {
		lead = fmt.Sprintf("Thank you for sharing that, %s.", name)
	}
	return lead + " What would you say is your unique value proposition or what do you want to be " +
		"known for professionally? What sets you apart from others in your field?"
}

func achievementsQuestion(name string) string {
	lead := "That's really helpful."
	if name != "" {
		lead = fmt.Sprintf("That's really helpful, %s.", name)
	}
	return lead + " Could you share 2-3 of your most significant professional achievements? " +
		"If possible, include measurable results (e.g., increased revenue by 20%, led a team of 15, " +
		"completed project under budget)."
}

func emailQuestion(name string) string {
	lead := "Thank you for sharing those detailed achievements!"
	if name != "" {
		lead = fmt.Sprintf("Thank you for sharing those detailed achievements, %s!", name)
	}
	return lead + " Just one final question - what email address should I send your completed resume to?"
}

func closingPrompt(name, email string) string {
	lead := "Perfect!"
	if name != "" {
		lead = fmt.Sprintf("Perfect, %s!", name)
	}
	return fmt.Sprintf("%s I've collected all the necessary information to build your professional resume. "+
		"You'll receive your completed resume at %s within 24-48 hours. Thank you for using our service!", lead, email)
}

// completeFallback is used when free-form generation fails after the flow is
// already done.
func completeFallback(name string) string {
	lead := "Thanks for your message!"
	if name != "" {
		lead = fmt.Sprintf("Thanks for your message, %s!", name)
	}
	return lead + " Your resume information has been collected and your completed resume is on its way."
}

// topicOpening returns the question that opens the given topic.
func topicOpening(t Topic, name string) string {
	switch t {
	case TopicGoals:
		return goalsQuestion(name)
	case TopicValueProp:
		return valuePropQuestion(name)
	default:
		return achievementsQuestion(name)
	}
}

// topicTransition wraps a generated follow-up question in the conversational
// phrase for the topic's sub-step (1 or 2).
func topicTransition(t Topic, subStep int, name, question string) string {
	type phrasing struct{ first, second string }
	p := map[Topic]phrasing{
		TopicGoals:        {"Thank you for sharing that", "I appreciate that insight%s. One more question about your career goals: "},
		TopicValueProp:    {"That's a compelling value proposition", "Excellent point%s. One more question about your unique strengths: "},
		TopicAchievements: {"Those are impressive achievements", "Thank you for elaborating%s. One last question about your accomplishments: "},
	}[t]

	mention := ""
	if name != "" {
		mention = ", " + name
	}
	if subStep == 1 {
		return fmt.Sprintf("%s%s. %s", p.first, mention, question)
	}
	return fmt.Sprintf(p.second, mention) + question
}
