// Package stream maintains one long-lived WebSocket connection that carries
// server-pushed events and in-band request/response exchanges on the same
// channel.
//
// A Connection is built over an api.Client, whose base URL and signing
// conventions it reuses for the handshake, and is specialized per provider
// by two behaviors: a Parser that decodes a text payload into a Message and
// a Matcher that pairs an outbound payload with its eventual reply.
//
// One background receive loop reads frames, reassembles fragmented messages
// and broadcasts every decoded Message, in arrival order, to all current
// subscribers. A subscriber that joins late sees subsequent messages only;
// there is no replay. Request parks the caller on the same sequence until
// the Matcher accepts a message, without blocking the loop.
//
// The connection moves through Idle, Connecting, Open and then either
// Closing and Closed after a close handshake, or Faulted when the loop dies.
// A Connection is one connect cycle; reconnecting means building a new one.
//
//	conn, err := stream.New(client, parseEvent, matchReply, logger)
//	if err != nil {
//	    return err
//	}
//	if err := conn.Connect(ctx, "/v2/user", nil); err != nil {
//	    return err
//	}
//	defer conn.Disconnect()
//
//	sub := conn.Subscribe()
//	for msg := range sub.C() {
//	    handle(msg)
//	}
//	if err := sub.Err(); err != nil {
//	    return err
//	}
package stream
