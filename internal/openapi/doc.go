// Package openapi provides a client for the official TickTick Open API.
//
// This is the vendor-documented, bearer-token-authenticated REST interface.
// It covers task and project CRUD:
//   - Tasks: get, create, update, complete, delete
//   - Projects: list, get, get with tasks and columns, create, update, delete
//
// Authentication uses a single OAuth access token passed at construction;
// there is no token refresh. Any non-2xx response is surfaced as *APIError
// with the status code and the raw response body.
//
// Example usage:
//
//	client, err := openapi.NewClient(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	projects, err := client.ListProjects(ctx)
package openapi
