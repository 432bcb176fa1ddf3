// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package capture loads recorded network exchanges from JSON or YAML files
// and turns them into export summaries.
//
// A capture file looks like:
//
//	id: 6f1c...
//	url: https://api.example.com/users?id=1
//	method: GET
//	status_code: 200
//	start_date: 2025-01-02T09:26:53Z
//	duration: 245ms
//	request_headers:
//	  Accept: application/json
//	response_body: '{"id":1}'
//
// Binary bodies use request_body_base64 / response_body_base64 instead.
package capture
