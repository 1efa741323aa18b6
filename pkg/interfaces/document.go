package interfaces

// MarkdownMimeType is the content type the sync pipeline reacts to. Write
// events for any other type are ignored.
const MarkdownMimeType = "text/markdown"

// DocumentSource exposes a written document to the sync pipeline. It is the
// narrow view of whatever node abstraction the hosting application uses for
// file storage; implementations are expected to be cheap to construct per
// write event.
type DocumentSource interface {
	// MimeType reports the content type of the underlying node.
	MimeType() string
	// Name returns the file name including extension, e.g. "Jean Dupont.md".
	Name() string
	// Path returns the full path of the node inside the hosting store.
	Path() string
	// Content returns the current raw bytes of the document.
	Content() ([]byte, error)
}
