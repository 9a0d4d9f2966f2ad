// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/ocms-blog/internal/i18n"
	"github.com/olegiv/ocms-blog/internal/service"
)

// RegisterForm is the registration form. Length limits follow the column
// sizes of the schema.
type RegisterForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email,max=250"`
	Password string `form:"password" validate:"required,max=128"`
}

// LoginForm is the login form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// PostForm serves both post creation and editing.
type PostForm struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImgURL   string `form:"img_url" validate:"required,http_url,max=250"`
	Body     string `form:"body" validate:"required"`
}

// Input converts the form into the service input.
func (f PostForm) Input() service.PostInput {
	return service.PostInput{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		ImgURL:   f.ImgURL,
		Body:     f.Body,
	}
}

// CommentForm is the comment form under a post.
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

// formValidator is safe for concurrent use and caches struct metadata.
var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationKeys maps validator tags to message keys.
var validationKeys = map[string]string{
	"required": "validation.required",
	"email":    "validation.email",
	"http_url": "validation.url",
	"url":      "validation.url",
	"max":      "validation.max",
}

// validateForm checks form and returns localized messages keyed by form
// field name, or nil when the form is valid.
func validateForm(lang string, form any) map[string]string {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": i18n.T(lang, "validation.invalid")}
	}

	msgs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := msgs[fe.Field()]; seen {
			continue
		}
		key, ok := validationKeys[fe.Tag()]
		if !ok {
			key = "validation.invalid"
		}
		if fe.Param() != "" {
			msgs[fe.Field()] = i18n.T(lang, key, fe.Param())
		} else {
			msgs[fe.Field()] = i18n.T(lang, key)
		}
	}
	return msgs
}

// bindRegisterForm reads the registration form. The password is never trimmed.
func bindRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

func bindLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

func bindPostForm(r *http.Request) PostForm {
	return PostForm{
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Subtitle: strings.TrimSpace(r.PostFormValue("subtitle")),
		ImgURL:   strings.TrimSpace(r.PostFormValue("img_url")),
		Body:     strings.TrimSpace(r.PostFormValue("body")),
	}
}

func bindCommentForm(r *http.Request) CommentForm {
	return CommentForm{Text: strings.TrimSpace(r.PostFormValue("text"))}
}
