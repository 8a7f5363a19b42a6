// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package discovery

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheCachesWithinTTL(t *testing.T) {
	c := newTTLCache(time.Hour)
	var calls int32
	resolve := func() (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	v1, err := c.getOrResolve("key", resolve)
	require.NoError(t, err)
	v2, err := c.getOrResolve("key", resolve)
	require.NoError(t, err)

	assert.Equal(t, "value", v1)
	assert.Equal(t, "value", v2)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestTTLCacheExpiresAfterTTL(t *testing.T) {
	c := newTTLCache(time.Millisecond)
	var calls int32
	resolve := func() (interface{}, error) {
		n := atomic.AddInt32(&calls, 1)
		return fmt.Sprintf("value-%d", n), nil
	}

	v1, err := c.getOrResolve("key", resolve)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	v2, err := c.getOrResolve("key", resolve)
	require.NoError(t, err)

	assert.NotEqual(t, v1, v2)
}

func TestTTLCacheCollapsesConcurrentLookups(t *testing.T) {
	c := newTTLCache(time.Hour)
	var calls int32
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _ = c.getOrResolve("shared", func() (interface{}, error) {
				atomic.AddInt32(&calls, 1)
				time.Sleep(10 * time.Millisecond)
				return "v", nil
			})
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestTTLCachePropagatesResolveError(t *testing.T) {
	c := newTTLCache(time.Hour)
	_, err := c.getOrResolve("key", func() (interface{}, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	// A failed resolve must not be cached.
	v, err := c.getOrResolve("key", func() (interface{}, error) {
		return "recovered", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "recovered", v)
}
