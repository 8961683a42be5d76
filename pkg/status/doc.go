/*
Package status reports what a jvmbump run does to each file.

🎯 Purpose:
- One banner before the walk and one after it
- Per candidate file: a "processing" line, then updated, no change needed
  or an error line naming the file
- Every console line is mirrored into the zerolog logger from the context

Console output is plain text when pterm styling and fatih/color are disabled,
which is how the tests read it.
*/
package status
