// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the post listing.
	RouteRoot = "/"
	// RouteRegister is the registration route.
	RouteRegister = "/register"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteAbout is the about page.
	RouteAbout = "/about"
	// RouteContact is the contact page.
	RouteContact = "/contact"
	// RouteAdmin is the admin landing page.
	RouteAdmin = "/admin"
	// RouteHealth is the health check.
	RouteHealth = "/health"
	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"

	// RouteParamID matches numeric ids only.
	RouteParamID = "/{id:[0-9]+}"

	// RoutePost shows a post and accepts comments.
	RoutePost = "/post" + RouteParamID
	// RouteNewPost creates a post.
	RouteNewPost = "/new-post"
	// RouteEditPost edits a post.
	RouteEditPost = "/edit-post" + RouteParamID
	// RouteDeletePost deletes a post.
	RouteDeletePost = "/delete" + RouteParamID
)

const (
	redirectHome  = RouteRoot
	redirectLogin = RouteLogin

	redirectPostID     = "/post/%d"
	redirectEditPostID = "/edit-post/%d"
)

// Page template names.
const (
	pageIndex    = "index"
	pagePost     = "post"
	pageRegister = "register"
	pageLogin    = "login"
	pageMakePost = "make-post"
	pageAbout    = "about"
	pageContact  = "contact"
	pageAdmin    = "admin"
	pageError    = "error"
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
