/*
Package ports defines the driven ports (interfaces) for the IDX agent.

These interfaces decouple the HTTP and MCP adapters from concrete backends.

# Key Interfaces

  - ClaimStore: Persists the set of claimed incident IDs (memory or Redis).
  - IncidentSource: Reads incidents from, and forwards EIDO documents to, the EIDO agent.
*/
package ports
