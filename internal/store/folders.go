package store

import (
	"github.com/google/uuid"

	"missionctl/internal/models"
)

func (s *Store) ListFolders() ([]models.Folder, error) {
	folders, err := readJSON[[]models.Folder](s.foldersPath())
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

func (s *Store) GetFolder(folderID string) (*models.Folder, error) {
	folders, err := s.ListFolders()
	if err != nil {
		return nil, err
	}
	for i := range folders {
		if folders[i].ID == folderID {
			return &folders[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) CreateFolder(req models.CreateFolderRequest) (*models.Folder, error) {
	folders, err := s.ListFolders()
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if !folderExists(folders, *req.ParentID) {
			return nil, ErrNotFound
		}
	}

	taken := func(slug string) bool {
		for _, f := range folders {
			if f.Slug == slug {
				return true
			}
		}
		return false
	}

	f := models.Folder{
		ID:       uuid.NewString(),
		Slug:     uniqueSlug(Slugify(req.Name), taken),
		Name:     req.Name,
		ParentID: req.ParentID,
		Order:    nextSiblingOrder(folders, req.ParentID),
	}

	folders = append(folders, f)
	if err := writeJSON(s.foldersPath(), folders); err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateFolder renames or moves a folder. A move into the folder's own
// descendant subtree is rejected; the descendant check walks parent links
// iteratively with a visited guard, so even a corrupted (cyclic) index
// cannot loop forever.
func (s *Store) UpdateFolder(folderID string, req models.UpdateFolderRequest) (*models.Folder, error) {
	folders, err := s.ListFolders()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range folders {
		if folders[i].ID == folderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		folders[idx].Name = *req.Name
	}
	if req.ParentID.Set {
		if req.ParentID.Value != nil {
			target := *req.ParentID.Value
			if target == folderID {
				return nil, validationf("folder cannot be its own parent")
			}
			if !folderExists(folders, target) {
				return nil, ErrNotFound
			}
			if descendants(folders, folderID)[target] {
				return nil, validationf("cannot move a folder into its own subtree")
			}
		}
		folders[idx].ParentID = req.ParentID.Value
	}
	if req.Order != nil {
		folders[idx].Order = *req.Order
	}

	if err := writeJSON(s.foldersPath(), folders); err != nil {
		return nil, err
	}
	return &folders[idx], nil
}

// DeleteFolder removes a folder, every descendant folder, and all documents
// filed under any of them.
func (s *Store) DeleteFolder(folderID string) error {
	folders, err := s.ListFolders()
	if err != nil {
		return err
	}
	if !folderExists(folders, folderID) {
		return ErrNotFound
	}

	doomed := descendants(folders, folderID)
	doomed[folderID] = true

	docs, err := s.ListDocuments()
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.FolderID != nil && doomed[*d.FolderID] {
			if err := s.DeleteDocument(d.ID); err != nil {
				return err
			}
		}
	}

	kept := folders[:0]
	for _, f := range folders {
		if !doomed[f.ID] {
			kept = append(kept, f)
		}
	}
	return writeJSON(s.foldersPath(), kept)
}

func folderExists(folders []models.Folder, id string) bool {
	for _, f := range folders {
		if f.ID == id {
			return true
		}
	}
	return false
}

func nextSiblingOrder(folders []models.Folder, parentID *string) int {
	next := 0
	for _, f := range folders {
		sameParent := (f.ParentID == nil && parentID == nil) ||
			(f.ParentID != nil && parentID != nil && *f.ParentID == *parentID)
		if sameParent && f.Order >= next {
			next = f.Order + 1
		}
	}
	return next
}

// descendants computes the id set below root with an iterative BFS over the
// flat folder arena. The visited set guards against cycles in a bad index.
func descendants(folders []models.Folder, root string) map[string]bool {
	children := make(map[string][]string, len(folders))
	for _, f := range folders {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	visited := map[string]bool{}
	queue := []string{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			if visited[child] {
				continue
			}
			visited[child] = true
			queue = append(queue, child)
		}
	}
	delete(visited, root)
	return visited
}
