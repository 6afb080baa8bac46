// Package model defines the TickTick domain types shared by the open and
// web interface clients: tasks, projects, tags, attachments, and the full
// account sync snapshot, together with the priority name/ordinal mapping.
//
// Types carry JSON tags matching the backend's wire names so that both
// interfaces can marshal them directly.
package model
