// Package port implements TCP port availability scanning for the
// doctor command.
//
// The launcher never passes port arguments to the application — the
// runner binds whatever it binds — so this package only reports. Its
// one real customer is the doctor check for Streamlit's default port:
// a launch into an occupied 8501 "succeeds" from the launcher's point
// of view while the application fails or silently picks another port,
// and that is worth telling the user about before they launch.
package port
