// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import "net/http"

// Doer is the minimal HTTP client surface shared by the OpenAI-compatible
// SDKs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HeaderDoer adds fixed headers to every outgoing request.
type HeaderDoer struct {
	Next    Doer
	Headers map[string]string
}

// NewAttributionClient returns a client that sends the configured
// HTTP-Referer and X-Title headers. With neither set it returns
// http.DefaultClient unchanged.
func NewAttributionClient(cfg *Config) Doer {
	headers := map[string]string{}
	if cfg.Referer != "" {
		headers["HTTP-Referer"] = cfg.Referer
	}
	if cfg.Title != "" {
		headers["X-Title"] = cfg.Title
	}
	if len(headers) == 0 {
		return http.DefaultClient
	}
	return &HeaderDoer{Next: http.DefaultClient, Headers: headers}
}

// Do sets the headers on a clone of req and forwards it.
func (d *HeaderDoer) Do(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}
	return d.Next.Do(req)
}
