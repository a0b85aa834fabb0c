package http

import (
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// swaggerDoc serves the OpenAPI document to echo-swagger as JSON.
type swaggerDoc struct {
	doc []byte
}

func (d swaggerDoc) ReadDoc() string {
	return string(d.doc)
}

var registerSwagger sync.Once

// registerSwaggerDoc publishes doc under swag's default name. swag keeps a
// process-wide registry and refuses a second registration, so only the
// first call has an effect.
func registerSwaggerDoc(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc{doc: raw})
	})
	return nil
}
