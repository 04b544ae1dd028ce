package google

// DefaultScopes is the union of every capability's scopes. It is requested
// for each account regardless of which tools the account will use.
var DefaultScopes = []string{
	// OpenID Connect, needed for the userinfo lookup
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",

	// Gmail
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.labels",
	"https://www.googleapis.com/auth/gmail.settings.basic",

	// Calendar
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",

	// Drive
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/drive.file",

	// Docs and Sheets
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/documents.readonly",
	"https://www.googleapis.com/auth/spreadsheets",

	// Contacts
	"https://www.googleapis.com/auth/contacts.readonly",
}
