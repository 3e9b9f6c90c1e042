package ir

import (
	"fmt"
	"strings"
)

// instructionString renders a single instruction as human-readable IR
// text for display. The output is not the ".air" syntax internal/asm
// parses: constants, parameters, GEP, GETFIELDPTR, PHI, COPY and
// SWITCH print in forms the parser does not accept.
func instructionString(i *Instruction) string {
	switch i.Op {
	case NOP:
		return "nop"
	case LOAD:
		return fmt.Sprintf("%s = load %s", i.Result, i.Operands[0])
	case STORE:
		return fmt.Sprintf("store %s, %s", i.Operands[0], i.Operands[1])
	case ALLOCA:
		return fmt.Sprintf("%s = alloca %s", i.Result, i.AllocType)
	case GEP:
		return fmt.Sprintf("%s = &%s[%s]", i.Result, i.Operands[0], i.Operands[1])
	case GETFIELDPTR:
		return fmt.Sprintf("%s = &%s.field%d", i.Result, i.Operands[0], i.FieldIndex)
	case BR:
		return fmt.Sprintf("br %s", i.Targets[0].Label)
	case BRCOND:
		return fmt.Sprintf("br_cond %s, %s, %s", i.Operands[0], i.Targets[0].Label, i.Targets[1].Label)
	case SWITCH:
		parts := make([]string, 0, len(i.Cases))
		for idx, c := range i.Cases {
			parts = append(parts, fmt.Sprintf("%s -> %s", c, i.Targets[idx+1].Label))
		}
		return fmt.Sprintf("switch %s, default %s [%s]", i.Operands[0], i.Targets[0].Label, strings.Join(parts, ", "))
	case RET:
		if len(i.Operands) == 0 {
			return "ret"
		}
		return fmt.Sprintf("ret %s", i.Operands[0])
	case CALL:
		args := make([]string, 0, len(i.Operands)-1)
		for _, a := range i.Operands[1:] {
			args = append(args, a.String())
		}
		if i.Result != nil {
			return fmt.Sprintf("%s = call %s(%s)", i.Result, i.Callee, strings.Join(args, ", "))
		}
		return fmt.Sprintf("call %s(%s)", i.Callee, strings.Join(args, ", "))
	case PHI:
		parts := make([]string, len(i.Operands))
		for idx, v := range i.Operands {
			parts[idx] = fmt.Sprintf("[%s from %s]", v, i.PhiBlocks[idx].Label)
		}
		return fmt.Sprintf("%s = phi %s", i.Result, strings.Join(parts, ", "))
	case COPY:
		return fmt.Sprintf("%s = %s", i.Result, i.Operands[0])
	case CAST:
		return fmt.Sprintf("%s = cast %s", i.Result, i.Operands[0])
	case NEG, NOT, BITNOT:
		return fmt.Sprintf("%s = %s %s", i.Result, i.Op, i.Operands[0])
	default:
		// Binary arithmetic/compare/logical/bitwise
		return fmt.Sprintf("%s = %s %s, %s", i.Result, i.Op, i.Operands[0], i.Operands[1])
	}
}
