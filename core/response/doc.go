// Package response provides constructors for handler.Response values.
//
// Responses are deferred render functions, so they can be composed before
// anything reaches the wire:
//
//	resp := response.Redirect("/login")
//	resp = response.WithCookie(resp, &http.Cookie{Name: "remember_token", MaxAge: -1})
//
// Errors are returned rather than rendered. response.Error(response.ErrUnauthorized)
// hands the error to the router's ErrorHandler, which is the single place where an
// application decides how failures look (plain text, JSON, or a custom page).
// Decorators such as WithCookie apply their headers before the wrapped response
// runs, so cookies are kept even when the wrapped response resolves to an error.
package response
