/*
Package steward is a Discord community assistant built around a stateless workflow engine.

Moderators configure the assistant through guided dialogs of choice menus and forms.
No step keeps a server-side session: every prompt carries a continuation token
("kind|step|params") that lets the next step rebuild its context and re-check
permissions. The engine only emits actions; the host performs them best-effort.

# Workflows

  - config: admin role, auto role, welcome channels, role-button panels and the announcement channel.
  - announce: community, channel, @everyone choice and content, then a broadcast.
  - role buttons: self-service grant and revoke, read from published panels.
  - member join: auto role plus one welcome card per configured channel.

# Usage

	session, _ := discord.NewSession(token)
	a := steward.New(seed,
		discord.NewDirectory(session.State),
		discord.NewPlatform(session),
		steward.WithLogger(logger),
	)
	bot := discord.NewBot(session, a, discord.WithTextPrefix("!"))
	_ = bot.Open(ctx)

Configuration is held in memory and lost on restart.
*/
package steward
