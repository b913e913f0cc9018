// Package apiclient is a client for the For The City REST API.
//
// Every request is signed with a Hawk Authorization header and exchanges
// Collection+JSON documents. The client performs exactly one attempt per
// call and never follows redirects; retries belong to the caller.
//
// # Basic Usage
//
//	client, err := apiclient.New(apiclient.Config{
//	    ID:  "dh37fgj492je",
//	    Key: "werxhqb98rpaxn39848xrunpaw3489ruxnpa98w4rxn",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opp, resp, err := client.Opportunities().Get(ctx, "1")
//
// # Results
//
// Operations return the decoded data, the raw *Response and an error.
// The response is returned whenever one was received, including on
// failure, so callers can branch on the real status, headers and body.
//
// Responses are classified by the leading digit of the status code: 2xx
// and 3xx are a logical success, everything else is a logical failure.
// A failure carries the collection.error object of the body, if any:
//
//	_, _, err := client.Opportunities().Get(ctx, "10000")
//	var apiErr *apiclient.Error
//	if errors.As(err, &apiErr) && apiErr.Failure != nil {
//	    fmt.Println(apiErr.Failure.Title, apiErr.Failure.Code)
//	}
//
// Use errors.Is with ErrTransport, ErrLogicalFailure,
// collection.ErrSchemaViolation, collection.ErrEmptyCollection and the
// hawk request errors to branch on the failure kind.
//
// # Writes
//
// Writes submit an edited template. The template's data entries are also
// listed in the Hawk ext attribute (see ExtFromTemplate):
//
//	tmpl, _, err := client.Signup().Template(ctx, "1")
//	tmpl.Set(collection.Value("email", "someone@example.com"))
//	resp, err := client.Signup().Submit(ctx, "1", tmpl, "")
//
// # Configuration
//
// LoadConfig reads a YAML file and overlays FTC_TOKEN, FTC_SECRET,
// FTC_HOST, FTC_PORT and FTC_ALGORITHM from the environment.
//
// # Credential Rotation
//
// Rotate swaps credentials atomically. A request already being signed
// keeps the credentials it started with.
package apiclient
