package main

const helpMarkdown = `# trackview

A terminal timeline for Gecko performance profiles. Tracks are grouped by
process; the process row is backed by its main thread, and the local rows
under it show threads, network activity, IPC, event delay, counters
(memory, bandwidth, CPU, power), and custom marker tracks.

## Selection

- ` + "`enter`/`space`" + ` or click selects a track's thread.
- ` + "`m`" + ` or ctrl+click toggles a thread in and out of the selection.
- ` + "`r`" + ` extends the selection across the rows in between.
- Selection follows the active tab: thread tracks deselect on the Network
  tab, the network track selects only there, and marker/IPC tracks select
  only on the Marker Chart.

## Tracks

- ` + "`x`" + ` or clicking a row's ✕ hides the track; ` + "`u`" + ` shows all tracks again.
- Right click opens the track menu (hide, hide others, show all, copy name).
- ` + "`/`" + ` filters rows by name, ` + "`y`" + ` copies the focused track's summary.

## Tabs and files

- ` + "`[` and `]`" + ` cycle tabs, ` + "`1`–`6`" + ` jump directly.
- ` + "`o`" + ` opens another profile, ` + "`R`" + ` reloads the current one. The open
  file is watched and reloads automatically when it changes on disk.

Hidden tracks and the active tab are remembered per profile.
`
