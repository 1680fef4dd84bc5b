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
	"fmt"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

// DiscoveryResult tells the platform whether the collector applies to the
// host and, if so, which monitored objects it reports on.
type DiscoveryResult struct {
	Moobs        []string `json:"moobs,omitempty"`
	ReasonDetail *Reason  `json:"reasonDetail,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// NewDiscoveryResult returns an empty DiscoveryResult.
func NewDiscoveryResult() *DiscoveryResult {
	return &DiscoveryResult{}
}

// SetMoob appends a monitored object name.
func (d *DiscoveryResult) SetMoob(moob string) *DiscoveryResult {
	d.Moobs = append(d.Moobs, moob)
	return d
}

// SetReason attaches the reason the collector is inactive.
func (d *DiscoveryResult) SetReason(reason *Reason) *DiscoveryResult {
	d.ReasonDetail = reason
	return d
}

// SetActive sets whether the collector should be scheduled.
func (d *DiscoveryResult) SetActive(active bool) *DiscoveryResult {
	d.Active = ptr.To(active)
	return d
}

// Validate checks the result is complete enough to send.
func (d *DiscoveryResult) Validate() error {
	if d.Active == nil {
		return errors.InvalidField("active", "Field `active` unset but required")
	}
	if *d.Active {
		if len(d.Moobs) == 0 {
			return errors.InvalidField("moobs",
				"No moobs provided for active DiscoveryResult, must set at least one moob with `SetMoob`")
		}
		for i, m := range d.Moobs {
			if m == "" {
				return errors.InvalidField("moobs",
					fmt.Sprintf("Moob %q at index %d must be a non-empty string", m, i))
			}
		}
	}
	if d.ReasonDetail != nil {
		if err := d.ReasonDetail.Validate(); err != nil {
			return err
		}
	}
	return nil
}
