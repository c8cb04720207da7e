// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package healthcheck

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/penny-vault/pvscreen/pkginfo"
	"github.com/spf13/viper"
)

const (
	DefaultPingURL = "https://hc-ping.com"
	PingTimeout    = 10 * time.Second
)

var (
	ErrStatus = errors.New("status code is invalid")
)

// Check pings a healthchecks.io check around a screen run
type Check struct {
	ID      string
	BaseURL string

	client *resty.Client
}

// FromConfig returns the check configured under healthchecks.check_id, or
// nil when no check is configured
func FromConfig() *Check {
	id := viper.GetString("healthchecks.check_id")
	if id == "" {
		return nil
	}

	baseURL := viper.GetString("healthchecks.ping_url")
	if baseURL == "" {
		baseURL = DefaultPingURL
	}

	return New(id, baseURL)
}

func New(id, baseURL string) *Check {
	return &Check{
		ID:      id,
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  resty.New().SetTimeout(PingTimeout).SetRetryCount(2).SetHeader("User-Agent", pkginfo.UserAgent()),
	}
}

// Start signals that a run began
func (check *Check) Start() error {
	return check.ping("start", "")
}

// Success signals a completed run; msg is attached as the ping body
func (check *Check) Success(msg string) error {
	return check.ping("", msg)
}

// Fail signals a failed run with the error as the ping body
func (check *Check) Fail(runErr error) error {
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}

	return check.ping("fail", msg)
}

func (check *Check) ping(signal, body string) error {
	url := fmt.Sprintf("%s/%s", check.BaseURL, check.ID)
	if signal != "" {
		url = fmt.Sprintf("%s/%s", url, signal)
	}

	resp, err := check.client.R().
		SetHeader("Content-Type", "text/plain").
		SetBody(body).
		Post(url)

	if err != nil {
		return err
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	return nil
}
