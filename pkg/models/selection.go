package models

import "sort"

// Selection is the set of cart item ids taking part in the next checkout.
// It lives in ephemeral session state only and is cleared wholesale after a
// successful order placement.
type Selection map[string]struct{}

func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Selection) Contains(itemID string) bool {
	_, ok := s[itemID]
	return ok
}

func (s Selection) IsEmpty() bool {
	return len(s) == 0
}

// Toggle flips membership: present ids are removed, absent ids are added.
func (s Selection) Toggle(itemID string) {
	if _, ok := s[itemID]; ok {
		delete(s, itemID)
		return
	}
	s[itemID] = struct{}{}
}

// SelectAll replaces the set with exactly the given cart item ids.
func (s *Selection) SelectAll(ids []string) {
	next := make(Selection, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	*s = next
}

func (s *Selection) Clear() {
	*s = make(Selection)
}

// Prune drops ids that no longer correspond to a cart item, keeping the
// invariant that every selected id exists in the cart.
func (s Selection) Prune(validIDs []string) {
	valid := make(map[string]bool, len(validIDs))
	for _, id := range validIDs {
		valid[id] = true
	}
	for id := range s {
		if !valid[id] {
			delete(s, id)
		}
	}
}

// IDs returns the selected ids in a stable (sorted) order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
