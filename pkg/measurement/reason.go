// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package measurement

import (
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

// Reason explains why a discovery did not activate the collector.
type Reason struct {
	Recoverable *bool   `json:"recoverable,omitempty"`
	Msg         *string `json:"msg,omitempty"`
	Type        *string `json:"type,omitempty"`
}

// NewReason returns an empty Reason.
func NewReason() *Reason {
	return &Reason{}
}

// SetRecoverable marks whether retrying discovery may succeed.
func (r *Reason) SetRecoverable(recoverable bool) *Reason {
	r.Recoverable = ptr.To(recoverable)
	return r
}

// SetMsg sets the human-readable explanation.
func (r *Reason) SetMsg(msg string) *Reason {
	r.Msg = ptr.To(msg)
	return r
}

// SetType sets the reason category, one of the Reason* constants.
func (r *Reason) SetType(t string) *Reason {
	r.Type = ptr.To(t)
	return r
}

// Validate checks all fields are set. Empty strings count as unset.
func (r *Reason) Validate() error {
	if r.Recoverable == nil {
		return errors.InvalidField("recoverable", "Field `recoverable` must be set")
	}
	if ptr.Deref(r.Msg, "") == "" {
		return errors.InvalidField("msg", "Field `msg` must be set to a string")
	}
	if ptr.Deref(r.Type, "") == "" {
		return errors.InvalidField("type", "Field `type` must be set to a string")
	}
	return nil
}
