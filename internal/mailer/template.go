// internal/mailer/template.go
package mailer

import (
	"fmt"
	"strings"
	"time"
)

// RenderTemplate substitutes {key} placeholders in a template.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

const approvalEmailTemplate = `<!DOCTYPE html>
<html lang='en'>
<head><style>
  body { font-family: Arial, sans-serif; margin: 0; padding: 0; background-color: #f4f4f4; }
  .container { max-width: 600px; margin: 20px auto; background-color: #ffffff; padding: 20px; border-radius: 8px; box-shadow: 0 4px 8px rgba(0,0,0,0.1); }
  .header { text-align: center; padding-bottom: 20px; border-bottom: 1px solid #dddddd; }
  .content { padding: 20px 0; line-height: 1.6; color: #333333; }
  .content h1 { color: #27ae60; }
  .button-container { text-align: center; margin-top: 20px; }
  .button { background-color: #3498db; color: #ffffff; padding: 12px 25px; text-decoration: none; border-radius: 5px; font-weight: bold; }
  .footer { text-align: center; font-size: 12px; color: #777777; padding-top: 20px; border-top: 1px solid #dddddd; }
</style></head>
<body>
<div class='container'>
  <div class='header'>
    <h1>Welcome Aboard!</h1>
  </div>
  <div class='content'>
    <p>Hello {username},</p>
    <p>Great news! Your account with the Customer Management System has been reviewed and approved by an administrator. You can now log in and access your dashboard.</p>
    <div class='button-container'>
      <a href='{login_url}' class='button'>Login to Your Account</a>
    </div>
  </div>
  <div class='footer'>
    <p>&copy; {year} CRM Project. All rights reserved.</p>
  </div>
</div>
</body>
</html>`

// AccountApprovalEmail builds the HTML body sent when an admin approves
// a pending customer.
func AccountApprovalEmail(username string) string {
	return RenderTemplate(approvalEmailTemplate, map[string]string{
		"username":  username,
		"login_url": "http://localhost:5173/login",
		"year":      fmt.Sprintf("%d", time.Now().Year()),
	})
}

// RejectionNotice is the plain-text body sent when a registration is
// rejected.
const RejectionNotice = "We regret to inform you that your registration for the CRM Portal has been rejected."

// RegistrationConfirmation is sent right after a customer registers.
const RegistrationConfirmation = "You are registered to the Customer Management System. Your account is pending admin approval."
