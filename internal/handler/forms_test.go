// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olegiv/ocms-blog/internal/i18n"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil, "en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name string
		form any
		want map[string]string
	}{
		{
			name: "valid registration",
			form: RegisterForm{Name: "Ana", Email: "ana@example.com", Password: "pw"},
			want: nil,
		},
		{
			name: "missing fields",
			form: RegisterForm{},
			want: map[string]string{
				"name":     "This field is required.",
				"email":    "This field is required.",
				"password": "This field is required.",
			},
		},
		{
			name: "bad email",
			form: LoginForm{Email: "ana.example.com", Password: "pw"},
			want: map[string]string{"email": "Enter a valid email address."},
		},
		{
			name: "name too long",
			form: RegisterForm{Name: strings.Repeat("a", 101), Email: "ana@example.com", Password: "pw"},
			want: map[string]string{"name": "Must be at most 100 characters."},
		},
		{
			name: "image url without scheme",
			form: PostForm{Title: "T", Subtitle: "S", ImgURL: "example.com/a.jpg", Body: "B"},
			want: map[string]string{"img_url": "Enter a valid URL."},
		},
		{
			name: "valid post",
			form: PostForm{Title: "T", Subtitle: "S", ImgURL: "https://example.com/a.jpg", Body: "B"},
			want: nil,
		},
		{
			name: "empty comment",
			form: CommentForm{},
			want: map[string]string{"text": "This field is required."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validateForm("en", tt.form))
		})
	}
}

func TestValidateForm_Localized(t *testing.T) {
	errs := validateForm("pt", CommentForm{})
	assert.NotEmpty(t, errs["text"])
	assert.NotEqual(t, "This field is required.", errs["text"])
}

func TestValidateForm_NotAStruct(t *testing.T) {
	errs := validateForm("en", "nope")
	assert.Equal(t, map[string]string{"": "Invalid value."}, errs)
}

func postRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return req
}

func TestBindForms_TrimAllButPasswords(t *testing.T) {
	reg := bindRegisterForm(postRequest(url.Values{
		"name":     {"  Ana  "},
		"email":    {" ana@example.com\n"},
		"password": {" spaced pw "},
	}))
	assert.Equal(t, RegisterForm{Name: "Ana", Email: "ana@example.com", Password: " spaced pw "}, reg)

	login := bindLoginForm(postRequest(url.Values{"email": {" a@b.co "}, "password": {" x "}}))
	assert.Equal(t, LoginForm{Email: "a@b.co", Password: " x "}, login)

	post := bindPostForm(postRequest(url.Values{
		"title": {" T "}, "subtitle": {" S "}, "img_url": {" https://x.io/a.png "}, "body": {" <p>B</p> "},
	}))
	assert.Equal(t, PostForm{Title: "T", Subtitle: "S", ImgURL: "https://x.io/a.png", Body: "<p>B</p>"}, post)
	assert.Equal(t, "https://x.io/a.png", post.Input().ImgURL)

	comment := bindCommentForm(postRequest(url.Values{"text": {"   "}}))
	assert.Empty(t, comment.Text)
}
