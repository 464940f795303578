// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package guard holds the ownership check gating every post and comment
// mutation. Handlers call it explicitly at each mutation entry point; a
// failed check redirects to the resource's detail page without touching
// any state.
package guard

import "github.com/google/uuid"

// Owns reports whether the actor owns the resource. Anonymous actors
// (nil ID) never own anything.
func Owns(actorID *uuid.UUID, ownerID uuid.UUID) bool {
	return actorID != nil && *actorID == ownerID
}
