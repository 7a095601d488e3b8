// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

// Route path constants used in handlers and route registration.
const (
	RouteRoot = "/"

	RouteSuffixNew = "/new"

	RouteSuffixDelete = "/delete"

	RouteSuffixRead = "/read"

	RouteParamID = "/{id}"

	RouteParamSlug = "/{slug}"

	RouteLogin = "/login"

	RouteLogout = "/logout"

	RouteSetup = "/setup"

	RouteBlog = "/blog"

	RouteServices = "/services"

	RoutePortfolio = "/portfolio"

	RouteContact = "/contact"

	RouteProjects = "/projects"

	RouteTestimonials = "/testimonials"

	RoutePosts = "/posts"

	RouteStats = "/stats"

	RouteInquiries = "/inquiries"

	RouteUploads = "/uploads"
)

// Composed routes.
const (
	RouteProjectsID = RouteProjects + RouteParamID

	RouteServicesID = RouteServices + RouteParamID

	RouteTestimonialsID = RouteTestimonials + RouteParamID

	RoutePostsID = RoutePosts + RouteParamID

	RouteStatsID = RouteStats + RouteParamID

	RouteInquiriesID = RouteInquiries + RouteParamID

	RouteBlogSlug = RouteBlog + RouteParamSlug
)

// Admin redirect targets.
const (
	redirectAdmin        = "/admin"
	redirectLogin        = "/admin/login"
	redirectProjects     = "/admin/projects"
	redirectTestimonials = "/admin/testimonials"
	redirectServices     = "/admin/services"
	redirectPosts        = "/admin/posts"
	redirectStats        = "/admin/stats"
	redirectInquiries    = "/admin/inquiries"
)
