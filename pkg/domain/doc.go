/*
Package domain contains the core domain model of the Steward assistant.

It defines the moderator-set configuration, the inbound platform events the
assistant reacts to and the outbound actions it asks the platform to perform.
This package is kept pure and free of external dependencies like the Discord
session or the process environment, following Hexagonal Architecture principles.

# Key Entities

  - Config: The process-wide settings written by the configuration workflows.
  - ButtonSpec: A published self-service role button.
  - Event: A closed variant of everything the platform can deliver (commands, selections, forms, presses, joins).
  - Action: A structural representation of what the host should send, show or mutate.
*/
package domain
