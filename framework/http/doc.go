// Package http provides Laravel-compatible request and response helpers
// for the validation endpoints.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Input as a map: JSON (numbers as json.Number), form values, query string
//	data, err := req.Data()
//
//	// Validate in one step, like $request->validate()
//	res, err := req.Validate(v, validation.Rules{"email": "required|email"}, nil)
//
//	// Route params (requires Chi router)
//	name := req.RouteParam("ruleset")
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ValidationError(result)   // 422 {"message": "...", "errors": {"field": ["msg"]}}
//	res.Validated(result)         // 200 or 422 depending on result
package http
