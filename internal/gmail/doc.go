// Package gmail builds RFC 2822 messages for the Gmail API and reads
// headers back out of the messages it returns.
//
// Example:
//
//	msg := &gmail.EmailMessage{
//	    To:      []string{"recipient@example.com"},
//	    Subject: "Hello",
//	    Body:    "This is a test email",
//	}
//	raw, err := msg.Raw()
//	if err != nil {
//	    return err
//	}
//	sent, err := svc.Users.Messages.Send("me", &gmailv1.Message{Raw: raw}).Do()
package gmail
