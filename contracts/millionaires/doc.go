/*
Package millionaires implements Millionaires contract which tracks the
wealthiest of the registered participants.

Any account can register a participant by its address and declared net worth
or re-declare net worth of the already registered one. The contract keeps the
participant with the maximum net worth seen so far. The earliest registered
participant wins ties, so repeated equal submissions never change the answer.
Net worth width (in bits) is fixed on deployment, 64 bits by default. Values
exceeding the width are rejected, never truncated.

All exceptions thrown by the contract are prefixed with one of the error kinds
declared in millionairesconst package: "InvalidArgument" or "NotFound".

# Contract notifications

ParticipantAdded notification. This notification is produced on each
successful participant registration.

	ParticipantAdded:
	  - name: address
	    type: String
	  - name: netWorth
	    type: Integer

RichestChanged notification. This notification is produced when a
registration has changed the richest participant.

	RichestChanged:
	  - name: address
	    type: String
	  - name: netWorth
	    type: Integer
*/
package millionaires

/*
Contract storage model.

Current conventions:
 <address>: participant address, UTF-8 up to 52 bytes

# Summary
Key-value storage format:
 - 'netWorthBits' -> int
   net worth width fixed on deployment
 - 'richest' -> std.Serialize(Participant)
   participant with maximum net worth
 - 'participant:<address>' -> std.Serialize(Participant)
   last registration of the participant with the given address

# Participants
Participant records are never removed, so the full set of registered
addresses can always be audited with ListParticipants.
*/
