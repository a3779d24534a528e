// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away common body decoding patterns, ensuring consistent error
handling and type safety.
*/
package requestutil

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/taibuivan/bookcatalog/internal/platform/validate"
)

// maxBodyBytes bounds the size of any JSON payload accepted by the API.
const maxBodyBytes = 1 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

/*
DecodeJSON reads the request body and decodes it into the target structure.

Fields already set on target act as defaults for keys missing from the body.

Parameters:
  - writer: http.ResponseWriter (used to cap the body size)
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}
