package http

import (
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// specDoc serves the embedded OpenAPI document to swag as JSON.
type specDoc struct {
	json string
}

func (d specDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// RegisterSwaggerDoc publishes doc under swag's default instance so that
// /swagger/doc.json and the UI at /swagger/index.html can read it. swag keeps
// a process-wide registry, so only the first call takes effect.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, specDoc{json: string(raw)})
	})
	return nil
}
