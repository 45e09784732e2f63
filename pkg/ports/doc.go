/*
Package ports defines the driven ports (interfaces) of the Steward assistant.

These interfaces decouple the workflow engine from the chat platform and from the
configuration storage, so every workflow can be exercised without a live connection.

# Key Interfaces

  - ConfigStore: Reads and writes the moderator-set configuration.
  - Directory: Resolves guilds, channels and roles that the assistant currently sees.
  - Platform: Performs outbound actions (replies, forms, messages, role changes).
*/
package ports
