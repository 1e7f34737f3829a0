// Package theme reads the user's GTK4 theme so the front end can match it.
//
// Colors come from @define-color declarations in ~/.config/gtk-4.0/gtk.css
// (following a single @import to the active theme file), and the dark-mode
// preference from settings.ini. A [Watcher] observes the theme directories
// and coalesces bursts of file events into a single change notification.
package theme
