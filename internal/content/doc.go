package content

// Package content owns the local content directory: the bundled asset list,
// destination paths handed to the download service, the completion marker that
// tells the rest of the app the video is available, and content removal.
