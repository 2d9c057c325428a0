package archive

import "os"

// FileArchiver writes the rendered post to a fixed local path, overwriting
// any prior run's copy. There is no history or versioning.
type FileArchiver struct {
	Path string
}

func New(path string) *FileArchiver {
	return &FileArchiver{Path: path}
}

// Save overwrites the archive file with the post. Write faults propagate;
// the pipeline has no policy for disk failures.
func (a *FileArchiver) Save(post string) error {
	return os.WriteFile(a.Path, []byte(post), 0o644)
}
