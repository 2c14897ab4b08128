package mail

import "html/template"

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<h2>Welcome, {{.Name}}!</h2>
<p>Your account has been successfully created using this email: <strong>{{.Email}}</strong>.</p>
<p>We're glad to have you on board!</p>`))

var verifyOTPTemplate = template.Must(template.New("verify_otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f4f4; margin: 0; padding: 24px;">
  <div style="max-width: 480px; margin: 0 auto; background: #ffffff; padding: 24px; border-radius: 8px;">
    <h2>Verify your email</h2>
    <p>You are just one step away from verifying your account for this email: <strong>{{.Email}}</strong>.</p>
    <p>Use the OTP below to verify your account.</p>
    <p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">{{.OTP}}</p>
    <p>This OTP is valid for 30 minutes.</p>
  </div>
</body>
</html>`))

var resetOTPTemplate = template.Must(template.New("reset_otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f4f4; margin: 0; padding: 24px;">
  <div style="max-width: 480px; margin: 0 auto; background: #ffffff; padding: 24px; border-radius: 8px;">
    <h2>Forgot your password?</h2>
    <p>We received a password reset request for your account: <strong>{{.Email}}</strong>.</p>
    <p>Use the OTP below to reset the password.</p>
    <p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">{{.OTP}}</p>
    <p>The password reset OTP is only valid for the next 15 minutes.</p>
  </div>
</body>
</html>`))
