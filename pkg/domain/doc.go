/*
Package domain contains the core models of the IDX agent.

It defines the incident-facing entities exchanged with the EIDO agent and with
dispatch clients. This package is kept pure and free of external dependencies
like I/O or persistence.

# Key Entities

  - Incident: An incident record as published by the EIDO agent (passed through verbatim).
  - ClaimReceipt: The acknowledgement returned when an incident is claimed.
  - CorrelationRequest / CorrelationResponse: Matching a new incident against known ones.
*/
package domain
