package goscip

// #include "bridge.h"
import "C"

import (
	"strings"
	"unsafe"
)

// The solver writes its log through a message handler plugin; the handler
// installed by NewModel forwards everything to the model's logger instead of
// stdout. The handler data is a registry token resolving to the Model.

func modelFromMessagehdlr(hdlr *C.SCIP_MESSAGEHDLR) *Model {
	model, _ := loadRef(unsafe.Pointer(C.SCIPmessagehdlrGetData(hdlr))).(*Model)
	return model
}

//export goMessageInfo
func goMessageInfo(hdlr *C.SCIP_MESSAGEHDLR, file *C.FILE, msg *C.char) {
	if model := modelFromMessagehdlr(hdlr); model != nil && msg != nil {
		if s := strings.TrimRight(C.GoString(msg), "\n"); s != "" {
			model.log.Debug().Msg(s)
		}
	}
}

//export goMessageDialog
func goMessageDialog(hdlr *C.SCIP_MESSAGEHDLR, file *C.FILE, msg *C.char) {
	goMessageInfo(hdlr, file, msg)
}

//export goMessageWarning
func goMessageWarning(hdlr *C.SCIP_MESSAGEHDLR, file *C.FILE, msg *C.char) {
	if model := modelFromMessagehdlr(hdlr); model != nil && msg != nil {
		if s := strings.TrimRight(C.GoString(msg), "\n"); s != "" {
			model.log.Warn().Msg(s)
		}
	}
}

//export goMessagehdlrFree
func goMessagehdlrFree(hdlr *C.SCIP_MESSAGEHDLR) C.SCIP_RETCODE {
	freeRef(unsafe.Pointer(C.SCIPmessagehdlrGetData(hdlr)))
	return C.SCIP_OKAY
}
