// Package domain contains the core entities of the SmartLeader application
// and the invariants they maintain: people and their workload, work items
// and their status machine, and wellbeing check-ins.
package domain
