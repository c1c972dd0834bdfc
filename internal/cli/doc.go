// Package cli provides the interactive NicheScope command-line client.
//
// It wires the account, session, saved-niche, analysis and report
// components behind a small REPL. The current session is kept in an explicit
// session.Context owned by App and replaced on signup, login and logout.
//
// Commands:
//   - signup / login / logout / whoami
//   - search <topic>: run a market analysis
//   - results, show <n>: inspect the last analysis
//   - save <n>, saved, remove <id>: manage saved niches
//   - export [saved]: write a PDF report of the results or the saved list
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
