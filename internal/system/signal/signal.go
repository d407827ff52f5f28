/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package signal provides the change notifications emitted by the builder services.
package signal

import (
	"sync"
	"time"

	"github.com/asgardeo/forge/internal/system/log"
	"github.com/asgardeo/forge/internal/system/utils"
)

const loggerComponentName = "SignalDispatcher"

// SignalType identifies the kind of change a signal reports.
type SignalType string

const (
	// ItemCreated is emitted when a single item is created.
	ItemCreated SignalType = "item_created"
	// ItemUpdated is emitted when a single item is updated or moved.
	ItemUpdated SignalType = "item_updated"
	// ItemDeleted is emitted when a single item is deleted.
	ItemDeleted SignalType = "item_deleted"
	// OrdersRecalculated is emitted when every order of a scope was renumbered.
	OrdersRecalculated SignalType = "orders_recalculated"
)

// Signal describes a change to one or more entities sharing a parent.
type Signal struct {
	ID         string
	Type       SignalType
	EntityType string
	EntityIDs  []int64
	ParentID   int64
	Actor      string
	Timestamp  time.Time
}

// NewSignal creates a signal for the given entities.
func NewSignal(signalType SignalType, entityType string, parentID int64, actor string, ids ...int64) Signal {
	return Signal{
		Type:       signalType,
		EntityType: entityType,
		EntityIDs:  ids,
		ParentID:   parentID,
		Actor:      actor,
	}
}

// NotifierInterface delivers signals to interested parties.
type NotifierInterface interface {
	Notify(signal Signal)
}

// SubscriberFunc receives dispatched signals.
type SubscriberFunc func(signal Signal)

// Dispatcher fans signals out to its subscribers synchronously.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers []SubscriberFunc
	now         func() time.Time
}

// NewDispatcher creates a new instance of Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{now: time.Now}
}

// Subscribe registers a subscriber.
func (d *Dispatcher) Subscribe(subscriber SubscriberFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, subscriber)
}

// Notify stamps the signal and hands it to every subscriber in registration order.
func (d *Dispatcher) Notify(signal Signal) {
	if signal.ID == "" {
		signal.ID = utils.GenerateUUID()
	}
	if signal.Timestamp.IsZero() {
		signal.Timestamp = d.now()
	}

	d.mu.RLock()
	subscribers := make([]SubscriberFunc, len(d.subscribers))
	copy(subscribers, d.subscribers)
	d.mu.RUnlock()

	for _, subscriber := range subscribers {
		subscriber(signal)
	}
}

// LoggingSubscriber writes every signal to the debug log.
func LoggingSubscriber(signal Signal) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Signal dispatched",
		log.String("signalId", signal.ID),
		log.String("type", string(signal.Type)),
		log.String("entityType", signal.EntityType),
		log.Int64("parentId", signal.ParentID),
		log.Any("entityIds", signal.EntityIDs),
		log.String("actor", signal.Actor))
}
