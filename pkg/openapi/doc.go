// Package openapi derives form fields from the request body of an OpenAPI 3
// operation. Documents are loaded from files, an fs.FS or HTTP and parsed
// with kin-openapi; the resulting schema is mapped onto form kinds, options
// and validator builders.
package openapi
