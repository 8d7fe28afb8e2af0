package mimex

// Static MIME<->extension tables, loaded once and never mutated.
// typeToExtension picks one canonical extension per type; the reverse
// table may map several extensions to the same type.

var typeToExtension = map[string]string{
	"image/jpeg":         "jpg",
	"image/png":          "png",
	"image/gif":          "gif",
	"image/webp":         "webp",
	"image/bmp":          "bmp",
	"image/tiff":         "tiff",
	"image/svg+xml":      "svg",
	"image/x-icon":       "ico",
	"image/vnd.microsoft.icon": "ico",

	"application/pdf":    "pdf",
	"application/zip":    "zip",
	"application/gzip":   "gz",
	"application/x-tar":  "tar",
	"application/x-7z-compressed":  "7z",
	"application/x-rar-compressed": "rar",
	"application/json":   "json",
	"application/xml":    "xml",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"application/vnd.ms-excel": "xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       "xlsx",
	"application/vnd.ms-powerpoint": "ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "pptx",
	"application/octet-stream": "bin",

	"text/plain": "txt",
	"text/html":  "html",
	"text/css":   "css",
	"text/csv":   "csv",
	"text/markdown": "md",

	"audio/mpeg": "mp3",
	"audio/ogg":  "ogg",
	"audio/wav":  "wav",
	"audio/flac": "flac",

	"video/mp4":        "mp4",
	"video/webm":       "webm",
	"video/x-msvideo":  "avi",
	"video/quicktime":  "mov",
	"video/x-matroska": "mkv",
}

var extensionToType = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",

	"pdf":  "application/pdf",
	"zip":  "application/zip",
	"gz":   "application/gzip",
	"tar":  "application/x-tar",
	"7z":   "application/x-7z-compressed",
	"rar":  "application/x-rar-compressed",
	"json": "application/json",
	"xml":  "application/xml",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"bin":  "application/octet-stream",

	"txt":  "text/plain",
	"html": "text/html",
	"htm":  "text/html",
	"css":  "text/css",
	"csv":  "text/csv",
	"md":   "text/markdown",

	"mp3":  "audio/mpeg",
	"ogg":  "audio/ogg",
	"wav":  "audio/wav",
	"flac": "audio/flac",

	"mp4":  "video/mp4",
	"webm": "video/webm",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"mkv":  "video/x-matroska",
}
