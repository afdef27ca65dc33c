/*
Package idx is the IDX agent: a small launcher plus the incident API it starts.

# Binaries

  - idx: selects a server from its first argument ("api" or "ui") and replaces
    itself with that server process, bound to 0.0.0.0 on a fixed port.
  - idx-api: the IDX agent HTTP API. It reads incidents from the EIDO agent,
    records claimed incidents (in memory or Redis), forwards uploaded EIDO
    documents and answers correlation requests.

# Usage

	idx api   # exec idx-api --host 0.0.0.0 --port 8001
	idx ui    # exec streamlit run ui/app.py --server.port 8502 --server.address 0.0.0.0

Any other selector prints "Invalid command: <selector>" and a usage line and
exits with status 1.
*/
package idx
