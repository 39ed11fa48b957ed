package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
)

// TagNode is one node of a collection's tag tree. Label is nil when the
// referenced catalog entry no longer resolves.
type TagNode struct {
	ID       int64      `json:"id"`
	TagID    int64      `json:"tagId"`
	Label    *string    `json:"label"`
	ParentID *int64     `json:"parentId"`
	Children []*TagNode `json:"children"`
}

// TagNodeCreation describes a new tag tree node. A nil ParentID attaches
// the node at the root.
type TagNodeCreation struct {
	CollectionID string
	TagID        int64
	ParentID     *int64
}

// TagRelationshipService manages the per-collection tag hierarchy: node
// creation, subtree deletion and the materialized tree reads.
type TagRelationshipService struct {
	store store.Store
}

func NewTagRelationshipService(s store.Store) *TagRelationshipService {
	return &TagRelationshipService{store: s}
}

// CreateNode attaches a tag to a collection's tree. The caller must own
// the collection, the tag must resolve in the catalog and a non-nil parent
// must be a node of the same collection.
func (s *TagRelationshipService) CreateNode(ctx context.Context, in TagNodeCreation, callerID int64) (*TagNode, error) {
	general, err := getOwnedContent(ctx, s.store, in.CollectionID, callerID)
	if err != nil {
		return nil, err
	}
	if general.Kind != model.KindCollection {
		return nil, &ValidationError{Field: "collectionId", Message: "content is not a collection"}
	}

	tags, err := s.store.ListTagsFromIDs(ctx, []int64{in.TagID})
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, &ValidationError{Field: "tagId", Message: "tag does not exist"}
	}

	if in.ParentID != nil {
		parent, err := s.store.GetTagRelationship(ctx, *in.ParentID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "tag relationship", ID: strconv.FormatInt(*in.ParentID, 10)}
		}
		if err != nil {
			return nil, err
		}
		if parent.CollectionID != in.CollectionID {
			return nil, &ValidationError{Field: "parentId", Message: "parent belongs to another collection"}
		}
	}

	rel := &model.TagRelationship{
		TagID:        in.TagID,
		ParentID:     in.ParentID,
		CollectionID: in.CollectionID,
	}
	if err := s.store.CreateTagRelationship(ctx, rel); err != nil {
		return nil, err
	}

	keyword := tags[0].Keyword
	return &TagNode{
		ID:       rel.ID,
		TagID:    rel.TagID,
		Label:    &keyword,
		ParentID: rel.ParentID,
		Children: []*TagNode{},
	}, nil
}

// BuildTree materializes the tag forest of one collection. Nodes whose
// parent is nil or no longer present become roots. Every sibling list is
// sorted by label, case-insensitively, with unresolved labels last; ties
// keep insertion order.
func (s *TagRelationshipService) BuildTree(ctx context.Context, collectionID string) ([]*TagNode, error) {
	rels, err := s.store.ListTagRelationshipsByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return []*TagNode{}, nil
	}

	labels, err := s.resolveLabels(ctx, rels)
	if err != nil {
		return nil, err
	}

	nodes := make([]*TagNode, len(rels))
	index := make(map[int64]int, len(rels))
	for i, rel := range rels {
		nodes[i] = &TagNode{
			ID:       rel.ID,
			TagID:    rel.TagID,
			Label:    labels[rel.TagID],
			ParentID: rel.ParentID,
			Children: []*TagNode{},
		}
		index[rel.ID] = i
	}

	children := make([][]int, len(rels))
	var roots []int
	for i, rel := range rels {
		if rel.ParentID == nil {
			roots = append(roots, i)
			continue
		}
		parent, ok := index[*rel.ParentID]
		if !ok {
			// Orphaned by a parent deleted out of band; surface at the root
			// rather than dropping the subtree.
			roots = append(roots, i)
			continue
		}
		children[parent] = append(children[parent], i)
	}

	byLabel := func(list []int) {
		sort.SliceStable(list, func(a, b int) bool {
			return labelLess(nodes[list[a]].Label, nodes[list[b]].Label)
		})
	}
	byLabel(roots)
	for i := range children {
		byLabel(children[i])
	}

	for i := range nodes {
		for _, c := range children[i] {
			nodes[i].Children = append(nodes[i].Children, nodes[c])
		}
	}

	forest := make([]*TagNode, 0, len(roots))
	for _, r := range roots {
		forest = append(forest, nodes[r])
	}
	return forest, nil
}

// ChildrenOf returns one level of the tree: the roots when parentID is
// nil, otherwise the children of the given node.
func (s *TagRelationshipService) ChildrenOf(ctx context.Context, collectionID string, parentID *int64) ([]*TagNode, error) {
	forest, err := s.BuildTree(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if parentID == nil {
		return forest, nil
	}

	stack := append([]*TagNode{}, forest...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.ID == *parentID {
			return node.Children, nil
		}
		stack = append(stack, node.Children...)
	}
	return nil, &NotFoundError{Resource: "tag relationship", ID: strconv.FormatInt(*parentID, 10)}
}

// DeleteNode removes a node and its whole subtree from a collection's
// tree. Deleting an id that is not part of the collection is a no-op. The
// caller must own the collection.
func (s *TagRelationshipService) DeleteNode(ctx context.Context, collectionID string, nodeID int64, callerID int64) error {
	if _, err := getOwnedContent(ctx, s.store, collectionID, callerID); err != nil {
		return err
	}

	rel, err := s.store.GetTagRelationship(ctx, nodeID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if rel.CollectionID != collectionID {
		return nil
	}

	rels, err := s.store.ListTagRelationshipsByCollection(ctx, collectionID)
	if err != nil {
		return err
	}
	childIDs := make(map[int64][]int64, len(rels))
	for _, r := range rels {
		if r.ParentID != nil {
			childIDs[*r.ParentID] = append(childIDs[*r.ParentID], r.ID)
		}
	}

	// Visited set guards against a cycle slipped in by direct writes.
	visited := mapset.NewSet[int64]()
	stack := []int64{nodeID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.Add(id) {
			continue
		}
		stack = append(stack, childIDs[id]...)
	}

	doomed := visited.ToSlice()
	sort.Slice(doomed, func(i, j int) bool { return doomed[i] < doomed[j] })
	if err := s.store.DeleteTagRelationships(ctx, doomed); err != nil {
		return err
	}

	logrus.Infof("deleted %d tag tree nodes from collection %s", len(doomed), collectionID)
	return nil
}

func (s *TagRelationshipService) resolveLabels(ctx context.Context, rels []*model.TagRelationship) (map[int64]*string, error) {
	tagIDs := mapset.NewSet[int64]()
	for _, rel := range rels {
		tagIDs.Add(rel.TagID)
	}
	infos, err := s.store.ListTagsFromIDs(ctx, tagIDs.ToSlice())
	if err != nil {
		return nil, err
	}
	labels := make(map[int64]*string, len(infos))
	for _, info := range infos {
		keyword := info.Keyword
		labels[info.ID] = &keyword
	}
	return labels, nil
}

// labelLess orders labels case-insensitively, pushing unresolved (nil)
// labels after everything else.
func labelLess(a, b *string) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return strings.ToLower(*a) < strings.ToLower(*b)
}
