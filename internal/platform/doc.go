package platform

// Package platform contains OS/platform integration glue: filesystem helpers,
// Android detection and intent-style launching of the browser and the video
// player.
