package library

import (
	models "queenzz/internal/domain/models/library"
)

// Flatten lists every item of the tree in depth-first pre-order
func Flatten(items []*models.Item) []*models.Item {
	var flat []*models.Item
	for _, item := range items {
		flat = append(flat, item)
		if item.IsFolder() {
			flat = append(flat, Flatten(item.Children)...)
		}
	}
	return flat
}

// FlattenQuizzes lists every quiz of the tree in depth-first pre-order
func FlattenQuizzes(items []*models.Item) []*models.Item {
	var quizzes []*models.Item
	for _, item := range Flatten(items) {
		if item.Type == models.ItemQuiz {
			quizzes = append(quizzes, item)
		}
	}
	return quizzes
}

// FindItem returns the item with the given id anywhere in the tree, or nil
func FindItem(items []*models.Item, id string) *models.Item {
	for _, item := range items {
		if item.ID == id {
			return item
		}
		if item.IsFolder() {
			if found := FindItem(item.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// IsDescendant reports whether targetID is somewhere below parent
func IsDescendant(parent *models.Item, targetID string) bool {
	for _, child := range parent.Children {
		if child.ID == targetID {
			return true
		}
		if child.IsFolder() && IsDescendant(child, targetID) {
			return true
		}
	}
	return false
}

// extractItems removes every item whose id is in ids from the tree and returns
// the remaining tree plus the removed items in pre-order. A selected folder is
// removed whole, so selected items inside it stay inside it.
func extractItems(items []*models.Item, ids map[string]bool) (kept, extracted []*models.Item) {
	kept = make([]*models.Item, 0, len(items))
	for _, item := range items {
		if ids[item.ID] {
			extracted = append(extracted, item)
			continue
		}
		if item.IsFolder() {
			var sub []*models.Item
			item.Children, sub = extractItems(item.Children, ids)
			extracted = append(extracted, sub...)
		}
		kept = append(kept, item)
	}
	return kept, extracted
}

// validateMoveTarget rejects moving the selection into itself or below a selected folder
func validateMoveTarget(items []*models.Item, ids map[string]bool, targetID string) error {
	if ids[targetID] {
		return errInvalidMove("target folder %q is part of the selection", targetID)
	}
	target := FindItem(items, targetID)
	if target == nil {
		return errNotFound("folder", targetID)
	}
	if !target.IsFolder() {
		return errInvalidMove("target %q is not a folder", targetID)
	}
	for id := range ids {
		selected := FindItem(items, id)
		if selected.IsFolder() && IsDescendant(selected, targetID) {
			return errInvalidMove("folder %q cannot be moved inside its own descendant %q", id, targetID)
		}
	}
	return nil
}

// eachQuiz applies fn to every quiz of the tree
func eachQuiz(items []*models.Item, fn func(quiz *models.Item)) {
	for _, item := range Flatten(items) {
		if item.Type == models.ItemQuiz {
			fn(item)
		}
	}
}

// CollectIDs returns the set of every item id in the tree
func CollectIDs(items []*models.Item) map[string]bool {
	ids := make(map[string]bool)
	for _, item := range Flatten(items) {
		ids[item.ID] = true
	}
	return ids
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
