package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	// FileInvalidUTF8 marks content that failed UTF-8 validation on Add.
	// Scanners refuse such files instead of decoding them unchecked.
	FileInvalidUTF8
)

// File captures metadata and content for a single source file.
// Content is never mutated after Add.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// ValidUTF8 reports whether the file passed UTF-8 validation on Add.
func (f *File) ValidUTF8() bool {
	return f.Flags&FileInvalidUTF8 == 0
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
