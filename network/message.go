// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package network models the message queue and latency/failure simulation
// layer sitting under consensus: deterministic scheduling, drop/delay under
// failures, congestion, and bandwidth ceilings.
package network

import "github.com/luxfi/alpenglow/types"

// ContentKind discriminates the MessageContent tagged union.
type ContentKind uint8

const (
	VoteContent ContentKind = iota
	CertificateContent
	SkipCertificateContent
	CoalitionCoordinationContent
	GossipContent
	HeartbeatContent
)

// CoalitionInstruction is the payload of a CoalitionCoordination message.
type CoalitionInstruction struct {
	Phase      string // "" means no phase change
	Activate   bool
	Deactivate bool
	Abort      bool
}

// Content is the payload carried by a pending or delivered message.
type Content struct {
	Kind            ContentKind
	Vote            types.Vote
	Certificate     types.Certificate
	SkipCertificate types.SkipCertificate
	CoalitionIndex  int
	Instruction     CoalitionInstruction
}

func Vote(v types.Vote) Content { return Content{Kind: VoteContent, Vote: v} }
func Cert(c types.Certificate) Content {
	return Content{Kind: CertificateContent, Certificate: c}
}
func Skip(sc types.SkipCertificate) Content {
	return Content{Kind: SkipCertificateContent, SkipCertificate: sc}
}
func Coordination(idx int, instr CoalitionInstruction) Content {
	return Content{Kind: CoalitionCoordinationContent, CoalitionIndex: idx, Instruction: instr}
}
func Gossip() Content    { return Content{Kind: GossipContent} }
func Heartbeat() Content { return Content{Kind: HeartbeatContent} }

// Message is a pending or delivered entry in the queue.
type Message struct {
	ID                    uint64
	From, To              types.NodeId
	Content               Content
	SendTime              types.Timestamp
	ScheduledDeliveryTime types.Timestamp
	Priority              int
	RetryCount            uint32

	// ActualLatency is only meaningful once the message has been delivered.
	ActualLatency types.Timestamp
}

// Queue holds pending and delivered messages plus the monotone id counter.
type Queue struct {
	nextID    uint64
	Pending   []Message
	Delivered []Message
}

func NewQueue() *Queue {
	return &Queue{}
}

// indexOf returns the index of the pending message with id, or -1.
func (q *Queue) indexOf(id uint64) int {
	for i := range q.Pending {
		if q.Pending[i].ID == id {
			return i
		}
	}
	return -1
}

// enqueue appends a freshly-scheduled message and returns its id.
func (q *Queue) enqueue(from, to types.NodeId, content Content, priority int, sendTime, deliveryTime types.Timestamp) uint64 {
	q.nextID++
	id := q.nextID
	q.Pending = append(q.Pending, Message{
		ID:                    id,
		From:                  from,
		To:                    to,
		Content:               content,
		SendTime:              sendTime,
		ScheduledDeliveryTime: deliveryTime,
		Priority:              priority,
	})
	return id
}

// Drop removes a pending message by id, with no effect if it does not
// exist (silent no-op per the error-handling design).
func (q *Queue) Drop(id uint64) bool {
	idx := q.indexOf(id)
	if idx < 0 {
		return false
	}
	q.Pending = append(q.Pending[:idx], q.Pending[idx+1:]...)
	return true
}

// Deliver removes a pending message by id, appends it to the delivered log
// with its actual latency recorded, and returns it. No-op if unknown.
func (q *Queue) Deliver(id uint64, now types.Timestamp) (Message, bool) {
	idx := q.indexOf(id)
	if idx < 0 {
		return Message{}, false
	}
	msg := q.Pending[idx]
	q.Pending = append(q.Pending[:idx], q.Pending[idx+1:]...)
	msg.ActualLatency = now - msg.SendTime
	q.Delivered = append(q.Delivered, msg)
	return msg, true
}
