package validate

import "strings"

// Form is the raw field-name-to-value mapping a form hands to a schema.
type Form map[string]string

/*
====================================
LOGIN
====================================
*/

// LoginInput is the normalized login payload.
type LoginInput struct {
	Email    string
	Password string
}

// Login validates a sign-in form. The full password policy is not applied
// here: an existing password predates the current policy and must still be
// able to sign in.
func Login(f Form) (LoginInput, Violations) {
	v := Violations{}

	email, msgs := Email(f["email"])
	for _, m := range msgs {
		v.Add("email", m)
	}
	if f["password"] == "" {
		v.Add("password", "is required")
	}

	if !v.Empty() {
		return LoginInput{}, v
	}
	return LoginInput{Email: email, Password: f["password"]}, nil
}

/*
====================================
REGISTRATION
====================================
*/

// RegistrationInput is the normalized registration payload.
type RegistrationInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Language string
}

// Registration validates a sign-up form, including the password ==
// confirmPassword cross-field rule. Mismatch is attached to confirmPassword
// so the form highlights the retyped field.
func Registration(f Form) (RegistrationInput, Violations) {
	v := Violations{}

	name, msgs := FullName(f["full_name"])
	for _, m := range msgs {
		v.Add("full_name", m)
	}
	email, msgs := Email(f["email"])
	for _, m := range msgs {
		v.Add("email", m)
	}
	for _, m := range Password(f["password"]) {
		v.Add("password", m)
	}
	if f["password"] != f["confirmPassword"] {
		v.Add("confirmPassword", "must match the password")
	}
	phone, msgs := Phone(f["phone"])
	for _, m := range msgs {
		v.Add("phone", m)
	}
	lang, msgs := Language(f["language_preference"])
	for _, m := range msgs {
		v.Add("language_preference", m)
	}

	if !v.Empty() {
		return RegistrationInput{}, v
	}
	return RegistrationInput{
		FullName: name,
		Email:    email,
		Password: f["password"],
		Phone:    phone,
		Language: lang,
	}, nil
}

/*
====================================
PASSWORD CHANGE
====================================
*/

// PasswordChangeInput is the normalized password-change payload.
type PasswordChangeInput struct {
	CurrentPassword string
	NewPassword     string
}

// PasswordChange validates a password-change form: the new password must
// pass the full policy, match its confirmation, and differ from the current
// password.
func PasswordChange(f Form) (PasswordChangeInput, Violations) {
	v := Violations{}

	if f["currentPassword"] == "" {
		v.Add("currentPassword", "is required")
	}
	for _, m := range Password(f["newPassword"]) {
		v.Add("newPassword", m)
	}
	if f["newPassword"] != f["confirmNewPassword"] {
		v.Add("confirmNewPassword", "must match the new password")
	}
	if f["newPassword"] != "" && f["newPassword"] == f["currentPassword"] {
		v.Add("newPassword", "must differ from the current password")
	}

	if !v.Empty() {
		return PasswordChangeInput{}, v
	}
	return PasswordChangeInput{
		CurrentPassword: f["currentPassword"],
		NewPassword:     f["newPassword"],
	}, nil
}

/*
====================================
CONTENT
====================================
*/

// ContentInput is the normalized content-authoring payload.
type ContentInput struct {
	Title   string
	Slug    string
	Excerpt string
	Tags    string
	Body    Document
}

// Content validates a content-authoring form. Body arrives as the JSON
// encoding of a block document under the "body" field.
func Content(f Form) (ContentInput, Violations) {
	v := Violations{}

	title := strings.TrimSpace(f["title"])
	if title == "" {
		v.Add("title", "is required")
	} else if n := len([]rune(title)); n < 2 || n > 200 {
		v.Add("title", "must be 2-200 characters")
	}

	for _, m := range Slug(f["slug"]) {
		v.Add("slug", m)
	}

	excerpt := strings.TrimSpace(f["excerpt"])
	if len([]rune(excerpt)) > 500 {
		v.Add("excerpt", "must be at most 500 characters")
	}

	tags, msgs := Tags(f["tags"])
	for _, m := range msgs {
		v.Add("tags", m)
	}

	body, bv := ParseBlocks("body", f["body"])
	v.Merge(bv)

	if !v.Empty() {
		return ContentInput{}, v
	}
	return ContentInput{
		Title:   title,
		Slug:    f["slug"],
		Excerpt: excerpt,
		Tags:    tags,
		Body:    body,
	}, nil
}
